package service

import (
	"context"
	"testing"

	"github.com/Antoni2487/Bodeguita/internal/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificacion_FeedMasRecientePrimero(t *testing.T) {
	svc := NewNotificacionService(newStubNotificacionRepo(), queue.NewNotificacionPilas())
	usuario := uuid.New()
	ctx := context.Background()

	_, err := svc.Notificar(ctx, usuario, "primera", NotificacionSistema, nil)
	require.NoError(t, err)
	_, err = svc.Notificar(ctx, usuario, "segunda", NotificacionPedido, nil)
	require.NoError(t, err)

	feed := svc.Feed(usuario)
	require.Len(t, feed, 2)
	assert.Equal(t, "segunda", feed[0].Mensaje)
	assert.Equal(t, "primera", feed[1].Mensaje)
}

func TestNotificacion_RehidratacionConservaElOrden(t *testing.T) {
	repo := newStubNotificacionRepo()
	svc := NewNotificacionService(repo, queue.NewNotificacionPilas())
	usuario := uuid.New()
	otro := uuid.New()
	ctx := context.Background()

	_, err := svc.Notificar(ctx, usuario, "vieja", NotificacionSistema, nil)
	require.NoError(t, err)
	_, err = svc.Notificar(ctx, otro, "ajena", NotificacionSistema, nil)
	require.NoError(t, err)
	_, err = svc.Notificar(ctx, usuario, "reciente", NotificacionPedido, nil)
	require.NoError(t, err)

	// Proceso nuevo: mismas filas, pilas vacías.
	reiniciado := NewNotificacionService(repo, queue.NewNotificacionPilas())
	require.NoError(t, reiniciado.InicializarPilas(ctx))

	feed := reiniciado.Feed(usuario)
	require.Len(t, feed, 2)
	assert.Equal(t, "reciente", feed[0].Mensaje)
	assert.Equal(t, "vieja", feed[1].Mensaje)
	assert.Len(t, reiniciado.Feed(otro), 1)
}

func TestNotificacion_MarcarLeida(t *testing.T) {
	repo := newStubNotificacionRepo()
	svc := NewNotificacionService(repo, queue.NewNotificacionPilas())
	usuario := uuid.New()
	ctx := context.Background()

	n, err := svc.Notificar(ctx, usuario, "nuevo pedido", NotificacionPedido, nil)
	require.NoError(t, err)

	require.NoError(t, svc.MarcarLeida(ctx, usuario, n.ID))

	feed := svc.Feed(usuario)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].Leido)

	// Persistido, no solo en memoria.
	filas, err := repo.ListTodasOrdenadas(ctx)
	require.NoError(t, err)
	assert.True(t, filas[0].Leido)
}

func TestNotificacion_MarcarLeidaDeOtroUsuario(t *testing.T) {
	svc := NewNotificacionService(newStubNotificacionRepo(), queue.NewNotificacionPilas())
	usuario := uuid.New()
	ctx := context.Background()

	n, err := svc.Notificar(ctx, usuario, "privada", NotificacionPedido, nil)
	require.NoError(t, err)

	assert.Error(t, svc.MarcarLeida(ctx, uuid.New(), n.ID))
}
