package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureDB records the statement and arguments and fails the call, so a
// test can observe exactly what would go over the wire.
type captureDB struct {
	sql  string
	args []any
}

var errCaptured = errors.New("captured")

func (c *captureDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.sql = sql
	c.args = args
	return nil, errCaptured
}

func (c *captureDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.sql = sql
	c.args = args
	return pgconn.CommandTag{}, errCaptured
}

func TestBuildCall(t *testing.T) {
	assert.Equal(t, "SELECT * FROM get_dashboard_stats()", buildCall("get_dashboard_stats", nil))
	assert.Equal(t, "SELECT * FROM get_eco_trends(days_back => $1)", buildCall("get_eco_trends", []string{"days_back"}))
	assert.Equal(t,
		"SELECT * FROM get_booking_history(user_id_param => $1, limit_count => $2, offset_count => $3)",
		buildCall("get_booking_history", []string{"user_id_param", "limit_count", "offset_count"}))
}

func TestCheckProc_UnknownProcedure(t *testing.T) {
	_, err := checkProc("drop_all_tables", 0)
	require.NotNil(t, err)
	assert.Equal(t, KindBadParams, err.Kind)
}

func TestCheckProc_WrongArity(t *testing.T) {
	_, err := checkProc("is_admin", 2)
	require.NotNil(t, err)
	assert.Equal(t, KindBadParams, err.Kind)

	params, perr := checkProc("is_admin", 1)
	require.Nil(t, perr)
	assert.Equal(t, []string{"user_id"}, params)
}

func TestWrapErr_Classification(t *testing.T) {
	tests := []struct {
		name string
		code string
		want ErrorKind
	}{
		{"insufficient privilege", "42501", KindAuthorization},
		{"invalid authorization", "28000", KindAuthorization},
		{"bad password", "28P01", KindAuthorization},
		{"undefined function", "42883", KindBadParams},
		{"invalid text representation", "22P02", KindBadParams},
		{"unique violation", "23505", KindBadParams},
		{"anything else", "57P01", KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapErr("get_leaderboard", &pgconn.PgError{Code: tt.code})
			assert.Equal(t, tt.want, err.Kind)
			assert.Equal(t, "get_leaderboard", err.Proc)
		})
	}
}

func TestWrapErr_PlainErrorIsTransient(t *testing.T) {
	err := wrapErr("get_dashboard_stats", errors.New("connection refused"))
	assert.Equal(t, KindTransient, err.Kind)
	assert.False(t, IsAuthorization(err))
	assert.False(t, IsBadParams(err))
}

func TestSearchCars_AbsentFiltersAreNull(t *testing.T) {
	db := &captureDB{}
	g := New(db)

	_, err := g.SearchCars(context.Background(), nil, nil, nil, nil, nil, true, 20, 0)
	require.Error(t, err)

	require.Len(t, db.args, 8)
	assert.Nil(t, db.args[0], "search_term must be NULL when absent")
	assert.Nil(t, db.args[1], "location_param must be NULL when absent")
	assert.Nil(t, db.args[2], "car_type_param must be NULL when absent")
	assert.Nil(t, db.args[3])
	assert.Nil(t, db.args[4])
	assert.Equal(t, true, db.args[5])
}

func TestSearchCars_PresentFiltersArePassed(t *testing.T) {
	db := &captureDB{}
	g := New(db)

	term, location := "leaf", "Lagos"
	_, err := g.SearchCars(context.Background(), &term, &location, nil, nil, nil, false, 10, 5)
	require.Error(t, err)

	require.Len(t, db.args, 8)
	assert.Equal(t, &term, db.args[0])
	assert.Equal(t, &location, db.args[1])
	assert.Nil(t, db.args[2])
}

func TestEcoMatch_AbsentFiltersAreNull(t *testing.T) {
	db := &captureDB{}
	g := New(db)

	_, err := g.EcoMatch(context.Background(), nil, nil, 12.5)
	require.Error(t, err)

	require.Len(t, db.args, 3)
	assert.Nil(t, db.args[0])
	assert.Nil(t, db.args[1])
	assert.Equal(t, 12.5, db.args[2])
}

func TestIsAuthorization(t *testing.T) {
	authErr := wrapErr("is_admin", &pgconn.PgError{Code: "42501"})
	assert.True(t, IsAuthorization(authErr))
	assert.True(t, IsAuthorization(wrapped{authErr}))
}

type wrapped struct{ err error }

func (w wrapped) Error() string { return w.err.Error() }
func (w wrapped) Unwrap() error { return w.err }
