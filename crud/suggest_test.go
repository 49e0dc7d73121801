package crud

import (
	"math/rand"
	"testing"

	"chirper/domain"
)

func userPool(n int) []domain.User {
	pool := make([]domain.User, n)
	for i := range pool {
		pool[i] = domain.User{ID: i + 1}
	}
	return pool
}

func TestSampleUsersSmallPool(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	pool := userPool(3)
	got := sampleUsers(pool, domain.SuggestionLimit, rnd)
	if len(got) != 3 {
		t.Fatalf("got %d users, want the whole pool of 3", len(got))
	}
	for i := range got {
		if got[i].ID != pool[i].ID {
			t.Errorf("user %d has ID %d, want %d", i, got[i].ID, pool[i].ID)
		}
	}

	if got := sampleUsers([]domain.User{}, domain.SuggestionLimit, rnd); len(got) != 0 {
		t.Errorf("got %d users from an empty pool, want 0", len(got))
	}
}

func TestSampleUsersLargePool(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	pool := userPool(20)
	got := sampleUsers(pool, domain.SuggestionLimit, rnd)
	if len(got) != domain.SuggestionLimit {
		t.Fatalf("got %d users, want %d", len(got), domain.SuggestionLimit)
	}

	seen := make(map[int]bool, len(got))
	for _, u := range got {
		if u.ID < 1 || u.ID > 20 {
			t.Errorf("user ID %d is not from the pool", u.ID)
		}
		if seen[u.ID] {
			t.Errorf("user ID %d sampled twice", u.ID)
		}
		seen[u.ID] = true
	}
}

func TestSampleUsersDeterministicWithSeed(t *testing.T) {
	pool := userPool(20)

	first := sampleUsers(pool, domain.SuggestionLimit, rand.New(rand.NewSource(42)))
	second := sampleUsers(pool, domain.SuggestionLimit, rand.New(rand.NewSource(42)))

	if len(first) != len(second) {
		t.Fatalf("sample sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("sample %d differs: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}
