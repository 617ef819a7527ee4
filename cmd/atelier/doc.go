// Package main provides the atelier CLI.
//
//	atelier serve        # start the HTTP server
//	atelier seed         # load the starter catalog and admin account
//	atelier db:ping      # check database connectivity
//	atelier route:list   # list API routes
//	atelier queue:work   # run a standalone job worker
package main
