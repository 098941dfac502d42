package pedidos

import (
	"context"
	"strings"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/internal/domain/pedido"
)

// Las áreas de los comentarios solo se pasan a minúsculas: un área desconocida
// simplemente no encuentra fila y termina en 404.

func (uc *UseCase) GetComentario(ctx context.Context, pedidoID int64, area string) (*dto.ComentarioResponse, error) {
	c, found, err := uc.estatusRepo.GetComentario(ctx, pedidoID, pedido.Normalizar(area))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrComentarioNotFound
	}
	return &dto.ComentarioResponse{Comentarios: c}, nil
}

// ListComentarios devuelve solo los comentarios no vacíos del pedido.
func (uc *UseCase) ListComentarios(ctx context.Context, pedidoID int64) ([]dto.ComentarioAreaResponse, error) {
	cs, err := uc.estatusRepo.ListComentarios(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComentarioAreaResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, dto.ComentarioAreaResponse{Area: c.Area, Comentarios: c.Comentarios})
	}
	return out, nil
}

// SetComentario guarda el comentario recortado. La cadena vacía es válida; nil no.
func (uc *UseCase) SetComentario(ctx context.Context, pedidoID int64, area string, comentario *string) error {
	if comentario == nil {
		return domain.ErrComentarioRequerido
	}
	texto := strings.TrimSpace(*comentario)
	ok, err := uc.estatusRepo.SetComentario(ctx, pedidoID, pedido.Normalizar(area), &texto)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrEstatusNotFound
	}
	return nil
}

// ClearComentario deja el comentario del área en NULL.
func (uc *UseCase) ClearComentario(ctx context.Context, pedidoID int64, area string) error {
	ok, err := uc.estatusRepo.SetComentario(ctx, pedidoID, pedido.Normalizar(area), nil)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrEstatusNotFound
	}
	return nil
}
