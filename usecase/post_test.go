package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"poster/domain"
)

func TestPostInteractor_Submit(t *testing.T) {
	f := newFixture(domain.SepoliaChainId)
	s := connected(t, f)

	receipt, err := f.posts.Submit(context.Background(), s, "gm", "news")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(f.poster.postCalls) != 1 {
		t.Fatalf("post calls = %d, want 1", len(f.poster.postCalls))
	}
	if got := f.poster.postCalls[0].gasLimit; got != 60000 {
		t.Errorf("gas limit = %d, want 60000", got)
	}

	posts := s.Posts()
	if len(posts) != 4 || posts[0].Content != "gm" || posts[0].TxHash != receipt.TxHash {
		t.Errorf("feed not refreshed after posting: %+v", posts)
	}
	if s.IsPosting() {
		t.Error("posting flag must be reset")
	}
}

func TestPostInteractor_GateClosed(t *testing.T) {
	f := newFixture(domain.SepoliaChainId)
	f.token.balances[userA] = tokens(9)
	s := connected(t, f)

	_, err := f.posts.Submit(context.Background(), s, "gm", "news")

	var insufficient *domain.InsufficientTokensError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Submit err = %v, want InsufficientTokensError", err)
	}
	if f.poster.estimateCalls != 0 || len(f.poster.postCalls) != 0 {
		t.Error("no transaction may be attempted when the gate is closed")
	}
}

func TestPostInteractor_EmptyFields(t *testing.T) {
	f := newFixture(domain.SepoliaChainId)
	s := connected(t, f)

	for _, in := range [][2]string{{"", "news"}, {"gm", ""}} {
		if _, err := f.posts.Submit(context.Background(), s, in[0], in[1]); !errors.Is(err, domain.ErrorEmptyField) {
			t.Errorf("Submit(%q, %q) err = %v, want ErrorEmptyField", in[0], in[1], err)
		}
	}
}

func TestPostInteractor_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		estimate uint64
		estErr   error
		postErr  error
		kind     domain.PostErrorKind
	}{
		{"revert at estimate", 0, errors.New("execution reverted: below threshold"), nil, domain.PostErrorReverted},
		{"revert in receipt", 40000, nil, fmt.Errorf("tx: %w", domain.ErrorTransactionReverted), domain.PostErrorReverted},
		{"gas overflow", math.MaxUint64, nil, nil, domain.PostErrorSystem},
		{"other", 40000, nil, errors.New("nonce too low"), domain.PostErrorRaw},
	}

	for _, tt := range tests {
		f := newFixture(domain.SepoliaChainId)
		s := connected(t, f)
		f.poster.estimate = tt.estimate
		f.poster.estimateErr = tt.estErr
		f.poster.postErr = tt.postErr

		_, err := f.posts.Submit(context.Background(), s, "gm", "news")

		var perr *domain.PostError
		if !errors.As(err, &perr) {
			t.Errorf("%v: err = %v, want PostError", tt.name, err)
			continue
		}
		if perr.Kind != tt.kind {
			t.Errorf("%v: kind = %v, want %v", tt.name, perr.Kind, tt.kind)
		}
		if s.IsPosting() {
			t.Errorf("%v: posting flag must be reset", tt.name)
		}
	}
}

func TestPostInteractor_InProgress(t *testing.T) {
	f := newFixture(domain.SepoliaChainId)
	s := connected(t, f)

	s.beginPosting()
	if _, err := f.posts.Submit(context.Background(), s, "gm", "news"); !errors.Is(err, domain.ErrorOperationInProgress) {
		t.Errorf("Submit err = %v, want ErrorOperationInProgress", err)
	}
	if f.poster.estimateCalls != 0 {
		t.Error("a second submission must not reach the chain")
	}
}

func TestPostInteractor_GateUnknown(t *testing.T) {
	f := newFixture(domain.SepoliaChainId)
	f.poster.thresholdErr = errBoom
	s := connected(t, f)

	_, err := f.posts.Submit(context.Background(), s, "gm", "news")
	if !errors.Is(err, domain.ErrorBalanceUnknown) {
		t.Fatalf("Submit err = %v, want ErrorBalanceUnknown", err)
	}
	var insufficient *domain.InsufficientTokensError
	if errors.As(err, &insufficient) {
		t.Error("an unread balance must not be reported as insufficient")
	}
	if f.poster.estimateCalls != 0 || len(f.poster.postCalls) != 0 {
		t.Error("no transaction may be attempted without a balance check")
	}
}
