package repositories

import (
	"context"

	"gorm.io/gorm"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/infrastructure/models"
)

// tableRepo implements repositories.TableRepository
type tableRepo struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) repositories.TableRepository {
	return &tableRepo{db: db}
}

// List lists tables by number
func (r *tableRepo) List(ctx context.Context, establishmentID int64) ([]*entities.Table, error) {
	var ms []models.Table
	if err := GetDB(ctx, r.db).Where("establishment_id = ?", establishmentID).Order("number ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Table, 0, len(ms))
	for i := range ms {
		items = append(items, &entities.Table{
			ID:              ms[i].ID,
			EstablishmentID: ms[i].EstablishmentID,
			Number:          ms[i].Number,
			Status:          ms[i].Status,
		})
	}
	return items, nil
}

// Exists checks the table belongs to the establishment
func (r *tableRepo) Exists(ctx context.Context, establishmentID, id int64) (bool, error) {
	return exists(GetDB(ctx, r.db).Model(&models.Table{}).Where("id = ? AND establishment_id = ?", id, establishmentID))
}

// Create creates a new table
func (r *tableRepo) Create(ctx context.Context, table *entities.Table) error {
	if table.Status == "" {
		table.Status = entities.TableStatusAvailable
	}
	m := &models.Table{EstablishmentID: table.EstablishmentID, Number: table.Number, Status: table.Status}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	table.ID = m.ID
	return nil
}

// Update updates a table of the establishment
func (r *tableRepo) Update(ctx context.Context, table *entities.Table) error {
	updates := map[string]interface{}{"number": table.Number}
	if table.Status != "" {
		updates["status"] = table.Status
	}
	result := GetDB(ctx, r.db).
		Model(&models.Table{}).
		Where("id = ? AND establishment_id = ?", table.ID, table.EstablishmentID).
		Updates(updates)
	return affectedOrNotFound(result)
}

// Delete deletes a table of the establishment
func (r *tableRepo) Delete(ctx context.Context, establishmentID, id int64) error {
	return affectedOrNotFound(GetDB(ctx, r.db).Delete(&models.Table{}, "id = ? AND establishment_id = ?", id, establishmentID))
}

// commandRepo implements repositories.CommandRepository
type commandRepo struct {
	db *gorm.DB
}

// NewCommandRepository creates a new command repository
func NewCommandRepository(db *gorm.DB) repositories.CommandRepository {
	return &commandRepo{db: db}
}

// ListOpen lists open commands with their table number
func (r *commandRepo) ListOpen(ctx context.Context, establishmentID int64) ([]*entities.Command, error) {
	var rows []models.CommandRow
	if err := GetDB(ctx, r.db).
		Table("commands").
		Select("commands.*, tables.number AS table_number").
		Joins("JOIN tables ON tables.id = commands.table_id").
		Where("commands.establishment_id = ? AND commands.status = ?", establishmentID, entities.CommandStatusOpen).
		Order("commands.created_at DESC, commands.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Command, 0, len(rows))
	for i := range rows {
		items = append(items, &entities.Command{
			ID:              rows[i].ID,
			EstablishmentID: rows[i].EstablishmentID,
			TableID:         rows[i].TableID,
			TableNumber:     rows[i].TableNumber,
			WaiterName:      rows[i].WaiterName,
			Status:          rows[i].Status,
			CreatedAt:       rows[i].CreatedAt,
		})
	}
	return items, nil
}

// Create opens a new command
func (r *commandRepo) Create(ctx context.Context, command *entities.Command) error {
	if command.Status == "" {
		command.Status = entities.CommandStatusOpen
	}
	m := &models.Command{
		EstablishmentID: command.EstablishmentID,
		TableID:         command.TableID,
		WaiterName:      command.WaiterName,
		Status:          command.Status,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	command.ID = m.ID
	command.CreatedAt = m.CreatedAt
	return nil
}

// UpdateStatus updates the status of a command
func (r *commandRepo) UpdateStatus(ctx context.Context, establishmentID, id int64, status string) error {
	result := GetDB(ctx, r.db).
		Model(&models.Command{}).
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		Update("status", status)
	return affectedOrNotFound(result)
}

// Delete deletes a command
func (r *commandRepo) Delete(ctx context.Context, establishmentID, id int64) error {
	return affectedOrNotFound(GetDB(ctx, r.db).Delete(&models.Command{}, "id = ? AND establishment_id = ?", id, establishmentID))
}
