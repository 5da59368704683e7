package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/crumble/internal/domain/entity"
)

func TestEvents_ImplementInterface(t *testing.T) {
	events := []Event{
		TileDestroyed{Coord: entity.Coord{X: 1, Y: 2}},
		ScreenShakeRequest{Min: 6},
		Landed{ImpactSpeed: 2},
		Respawned{},
		LevelComplete{Portal: entity.Coord{X: 3, Y: 4}},
	}

	for _, e := range events {
		e.isEvent() // Should not panic
	}
	assert.Len(t, events, 5)
}

func TestEvents_TypeSwitch(t *testing.T) {
	var e Event = ScreenShakeRequest{Min: 4}

	switch ev := e.(type) {
	case ScreenShakeRequest:
		assert.Equal(t, 4.0, ev.Min)
	default:
		t.Fatalf("unexpected event type %T", e)
	}
}
