package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'email'"}

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql 1062", dup, true},
		{"wrapped mysql 1062", fmt.Errorf("failed to create user: %w", dup), true},
		{"mysql other code", &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, false},
		{"sqlite text", errors.New("UNIQUE constraint failed: users.email"), true},
		{"plain text", errors.New("Duplicate entry 'R-101' for key 'room_number'"), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDuplicateEntry(tc.err); got != tc.want {
				t.Errorf("IsDuplicateEntry(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
