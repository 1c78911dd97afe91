package cmd

import "testing"

func TestAbort(t *testing.T) {
	code := -1
	saved := exit
	exit = func(c int) { code = c }
	defer func() { exit = saved }()

	var released []string
	abort(func() { released = append(released, "session") }, func() { released = append(released, "wallet") })

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if len(released) != 2 || released[0] != "session" || released[1] != "wallet" {
		t.Errorf("released = %v, want session then wallet", released)
	}
}
