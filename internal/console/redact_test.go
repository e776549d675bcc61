package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`update User 1 password s3cret`, `update User 1 password ***`},
		{`update User 1 password "two words"`, `update User 1 password ***`},
		{`update User 1 password 1234`, `update User 1 password ***`},
		{`update User 1 {"password": 987654, "age": 3}`, `update User 1 {"password": ***, "age": 3}`},
		{`update User 1 {'email': 'a@b', 'password': 'x y'}`, `update User 1 {'email': 'a@b', 'password': ***}`},
		{`User.update("1", "password", "s3cret")`, `User.update("1", "password", ***)`},
		{`User.update("1", {"password": True})`, `User.update("1", {"password": ***})`},
		{`update User 1 password`, `update User 1 password`},
		{`update User 1 password_hint blue`, `update User 1 password_hint blue`},
		{`show User 1`, `show User 1`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, redact(tt.in))
		})
	}
}
