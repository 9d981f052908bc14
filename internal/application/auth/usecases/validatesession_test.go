package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSession(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "alice@example.com", "pw", true)
	seedUser(users, "bob@example.com", "pw", false)
	uc := NewValidateSessionUseCase(users, fakeTokens{})

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"live token, enabled user", "session|alice@example.com||live", true},
		{"expired token", "session|alice@example.com||expired", false},
		{"unknown subject", "session|ghost@example.com||live", false},
		{"disabled user", "session|bob@example.com||live", false},
		{"garbage", "nope", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uc.Execute(context.Background(), ValidateSessionCommand{Token: tt.token}))
		})
	}
}
