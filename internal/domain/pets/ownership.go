package pets

import "context"

// OwnerOf expone el ownerUserID de una mascota.
// Los demás módulos lo consumen vía interfaz para no importar pets.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// PetIDsByOwner alimenta las vistas agregadas (calendario, notificaciones, reposiciones).
func (s *Service) PetIDsByOwner(ctx context.Context, ownerUserID string) ([]string, error) {
	items, err := s.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
