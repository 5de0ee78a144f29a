package service

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/crewfit/crewfit-backend/internal/models"
)

func newCommentFixture() (*CommentService, *MockCommentRepository) {
	commentRepo := NewMockCommentRepository()
	checkinRepo := NewMockCheckinRepository()
	userRepo := NewMockUserRepository()

	checkinRepo.Create(&models.Checkin{ID: 1, GroupID: 1, UserID: 1, Title: "Morning run"})
	userRepo.Add(&models.User{ID: 1, DisplayName: "Ana"})
	userRepo.Add(&models.User{ID: 2, DisplayName: "Bruno"})

	return NewCommentService(commentRepo, checkinRepo, userRepo), commentRepo
}

func TestPostComment(t *testing.T) {
	svc, _ := newCommentFixture()

	tests := []struct {
		name      string
		checkinID uint
		userID    uint
		content   string
		wantErr   error
	}{
		{"Valid comment", 1, 1, "Nice pace!", nil},
		{"Empty content", 1, 1, "   ", ErrInvalidInput},
		{"Over length limit", 1, 1, strings.Repeat("x", 4001), ErrInvalidInput},
		{"Unknown checkin", 99, 1, "Hello", ErrNotFound},
		{"Unknown user", 1, 99, "Hello", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment, err := svc.PostComment(tt.checkinID, tt.userID, tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("PostComment error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PostComment unexpected error: %v", err)
			}
			if comment.Kind != models.KindComment {
				t.Errorf("PostComment kind = %q, want %q", comment.Kind, models.KindComment)
			}
		})
	}
}

func TestPostReactionDuplicate(t *testing.T) {
	svc, _ := newCommentFixture()

	first, err := svc.PostReaction(1, 1, "🔥")
	if err != nil {
		t.Fatalf("First reaction failed: %v", err)
	}
	if first.Kind != models.KindReaction || first.Emoji != "🔥" {
		t.Errorf("Unexpected reaction row: %+v", first)
	}

	if _, err := svc.PostReaction(1, 1, "🔥"); !errors.Is(err, ErrDuplicateReaction) {
		t.Errorf("Second reaction error = %v, want ErrDuplicateReaction", err)
	}

	// A different emoji or user is a different key and must succeed.
	if _, err := svc.PostReaction(1, 1, "👍"); err != nil {
		t.Errorf("Different emoji failed: %v", err)
	}
	if _, err := svc.PostReaction(1, 2, "🔥"); err != nil {
		t.Errorf("Different user failed: %v", err)
	}
}

func TestRemoveAndRepostReaction(t *testing.T) {
	svc, _ := newCommentFixture()

	first, err := svc.PostReaction(1, 1, "🔥")
	if err != nil {
		t.Fatalf("First reaction failed: %v", err)
	}

	if err := svc.RemoveReaction(1, 1, "🔥"); err != nil {
		t.Fatalf("RemoveReaction failed: %v", err)
	}

	// Removing again must report not found, not leak a stale lock.
	if err := svc.RemoveReaction(1, 1, "🔥"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Second removal error = %v, want ErrNotFound", err)
	}

	second, err := svc.PostReaction(1, 1, "🔥")
	if err != nil {
		t.Fatalf("Re-reaction after removal failed: %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("Re-reaction reused id %d, want a fresh row", second.ID)
	}
}

func TestConcurrentReactionsOnlyOneWins(t *testing.T) {
	svc, _ := newCommentFixture()

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PostReaction(1, 1, "🔥")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrDuplicateReaction):
			conflicts++
		default:
			t.Errorf("Unexpected error kind: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("Got %d successful reactions, want exactly 1", wins)
	}
	if conflicts != attempts-1 {
		t.Errorf("Got %d conflicts, want %d", conflicts, attempts-1)
	}

	existing, _ := svc.commentRepo.FindReaction(1, 1, "🔥")
	if existing == nil {
		t.Error("No live reaction after concurrent creates")
	}
}

func TestConcurrentCreateRemoveCycles(t *testing.T) {
	svc, _ := newCommentFixture()

	const cycles = 25
	var wg sync.WaitGroup
	for i := 0; i < cycles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.PostReaction(1, 1, "💪"); err == nil {
				svc.RemoveReaction(1, 1, "💪")
			}
		}()
	}
	wg.Wait()

	// Whatever interleaving happened, at most one live row may remain.
	comments, _ := svc.ListComments(1)
	live := 0
	for _, c := range comments {
		if c.Kind == models.KindReaction && c.Emoji == "💪" {
			live++
		}
	}
	if live > 1 {
		t.Errorf("Found %d live reactions for one key, want at most 1", live)
	}
}

func TestListCommentsOrdered(t *testing.T) {
	svc, _ := newCommentFixture()

	svc.PostComment(1, 1, "first")
	svc.PostReaction(1, 1, "🔥")
	svc.PostComment(1, 2, "second")

	comments, err := svc.ListComments(1)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("ListComments returned %d rows, want 3", len(comments))
	}
	for i := 1; i < len(comments); i++ {
		if comments[i].ID < comments[i-1].ID {
			t.Errorf("Comments out of order at index %d", i)
		}
	}
}
