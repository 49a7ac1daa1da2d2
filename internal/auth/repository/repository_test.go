package repository

import (
	"strings"
	"testing"
)

func TestUpdatePasswordQueryTouchesHashOnly(t *testing.T) {
	query := strings.ToLower(updatePasswordQuery)

	requiredFragments := []string{
		"update users",
		"set password_hash = $2",
		"where id = $1",
	}
	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected password update query fragment %q to be present", fragment)
		}
	}

	for _, column := range []string{"email", "display_name"} {
		if strings.Contains(query, column) {
			t.Fatalf("password update query must not modify %q", column)
		}
	}
}
