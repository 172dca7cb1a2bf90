package logic

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fanarena/analyst-api/internal/models"
)

func TestConversationKey(t *testing.T) {
	match := models.MatchContext{HomeTeam: "Arsenal", AwayTeam: "Chelsea"}

	if got := ConversationKey("room-7", match); got != "room-7" {
		t.Errorf("room id should win, got %q", got)
	}

	derived := ConversationKey("", match)
	if derived == "" {
		t.Fatal("derived key is empty")
	}
	if again := ConversationKey("", match); again != derived {
		t.Errorf("derived key not stable: %q vs %q", derived, again)
	}
	// Case differences in team names must not split the conversation.
	upper := ConversationKey("", models.MatchContext{HomeTeam: "ARSENAL", AwayTeam: "chelsea"})
	if upper != derived {
		t.Errorf("derived key should be case-insensitive: %q vs %q", upper, derived)
	}
	// Swapping home and away is a different fixture.
	swapped := ConversationKey("", models.MatchContext{HomeTeam: "Chelsea", AwayTeam: "Arsenal"})
	if swapped == derived {
		t.Error("reversed fixture should derive a different key")
	}
}

func TestMemoryConversationStoreWindow(t *testing.T) {
	store := NewMemoryConversationStore()
	ctx := context.Background()

	for i := 0; i < 14; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		err := store.Append(ctx, "key", models.ConversationTurn{
			Role:      role,
			Content:   fmt.Sprintf("turn %d", i),
			Timestamp: time.Now(),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	turns, err := store.Recent(ctx, "key", 12)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(turns) != 12 {
		t.Fatalf("got %d turns, want 12", len(turns))
	}
	if turns[0].Content != "turn 2" {
		t.Errorf("oldest surviving turn = %q, want %q", turns[0].Content, "turn 2")
	}
	if turns[11].Content != "turn 13" {
		t.Errorf("newest turn = %q, want %q", turns[11].Content, "turn 13")
	}
}

func TestMemoryConversationStoreShortHistory(t *testing.T) {
	store := NewMemoryConversationStore()
	ctx := context.Background()

	if err := store.Append(ctx, "key", models.ConversationTurn{Role: models.RoleUser, Content: "hello"}); err != nil {
		t.Fatal(err)
	}

	turns, err := store.Recent(ctx, "key", 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}

	turns, err = store.Recent(ctx, "other-key", 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 0 {
		t.Errorf("unknown key returned %d turns", len(turns))
	}
}

func TestMemoryConversationStoreIsolation(t *testing.T) {
	store := NewMemoryConversationStore()
	ctx := context.Background()

	store.Append(ctx, "a", models.ConversationTurn{Role: models.RoleUser, Content: "for a"})
	store.Append(ctx, "b", models.ConversationTurn{Role: models.RoleUser, Content: "for b"})

	turns, _ := store.Recent(ctx, "a", 12)
	if len(turns) != 1 || turns[0].Content != "for a" {
		t.Errorf("key isolation broken: %+v", turns)
	}
}
