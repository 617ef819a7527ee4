package notify

import (
	"testing"
	"time"
)

func TestFeedDeliversToSubscribers(t *testing.T) {
	feed := NewFeed()

	ch, cancel := feed.Subscribe()
	defer cancel()

	Success(feed, "Venda registrada com sucesso!")

	select {
	case n := <-ch:
		if n.Level != LevelSuccess {
			t.Errorf("level = %q", n.Level)
		}
		if n.Message != "Venda registrada com sucesso!" {
			t.Errorf("message = %q", n.Message)
		}
		if n.DisplayMS != DisplayFor.Milliseconds() {
			t.Errorf("displayMs = %d", n.DisplayMS)
		}
	case <-time.After(time.Second):
		t.Fatal("notice never arrived")
	}
}

func TestFeedDropsWhenSubscriberLags(t *testing.T) {
	feed := NewFeed()

	_, cancel := feed.Subscribe()
	defer cancel()

	// Overfill the buffer; Push must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < feedBuffer*3; i++ {
			Error(feed, "Erro ao atualizar estoque.")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Push blocked on a lagging subscriber")
	}
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	feed := NewFeed()

	ch, cancel := feed.Subscribe()
	cancel()

	Success(feed, "Produto adicionado com sucesso!")

	select {
	case n := <-ch:
		t.Errorf("received %q after cancel", n.Message)
	default:
	}
}

func TestMultiFansOut(t *testing.T) {
	a := NewFeed()
	b := NewFeed()

	chA, cancelA := a.Subscribe()
	defer cancelA()
	chB, cancelB := b.Subscribe()
	defer cancelB()

	Multi{a, b}.Push(Notice{Level: LevelSuccess, Message: "x"})

	for _, ch := range []<-chan Notice{chA, chB} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("fan-out missed a notifier")
		}
	}
}
