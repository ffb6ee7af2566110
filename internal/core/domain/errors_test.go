package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessage(t *testing.T) {
	cases := []struct {
		err    error
		want   string
		wantOK bool
	}{
		{ErrConflict, MsgConflict, true},
		{fmt.Errorf("login: %w", ErrAuthFailure), MsgAuthFailure, true},
		{fmt.Errorf("%w: users[0]", ErrInvalidImport), MsgInvalidImport, true},
		{ErrPostNotFound, "", false},
		{errors.New("boom"), "", false},
	}
	for _, tc := range cases {
		got, ok := Message(tc.err)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("Message(%v) = %q, %v; want %q, %v", tc.err, got, ok, tc.want, tc.wantOK)
		}
	}
}
