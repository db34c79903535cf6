package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/application/mediator"
)

type pingQuery struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(_ context.Context, request mediator.Request) (mediator.Response, error) {
	return "pong:" + request.(*pingQuery).Value, nil
}

func TestMediator_DispatchesByRequestType(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	// Act
	resp, err := m.Send(context.Background(), &pingQuery{Value: "x"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong:x", resp)
}

func TestMediator_RejectsUnknownAndDuplicate(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	_, err := m.Send(context.Background(), struct{}{})
	assert.Error(t, err)

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, request)
			calls = append(calls, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	// Act
	_, err := m.Send(context.Background(), &pingQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}
