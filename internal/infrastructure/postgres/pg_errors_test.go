package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/auditoria-precios/internal/domain"
)

// ─── translateError ─────────────────────────────────────────────────────────

func TestTranslateError_ConstraintsAErroresDeDominio(t *testing.T) {
	cases := map[string]struct {
		code string
		want error
	}{
		"clave única":    {code: "23505", want: domain.ErrDuplicate},
		"clave foránea":  {code: "23503", want: domain.ErrNotFound},
		"restricción ck": {code: "23514", want: domain.ErrInvalidInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := translateError("insert product", &pgconn.PgError{Code: tc.code, ConstraintName: "products_code_key"})
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), "products_code_key")
		})
	}
}

func TestTranslateError_OtrosErroresSeEnvuelvenConLaOperacion(t *testing.T) {
	base := errors.New("conexión cerrada")
	err := translateError("insert product", base)
	assert.ErrorIs(t, err, base)
	assert.EqualError(t, err, "insert product: conexión cerrada")

	err = translateError("insert product", &pgconn.PgError{Code: "40001"})
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "insert product:")
}
