package content

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

type TeamRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewTeamRepository(db *database.DB, logger *logging.ChanneledLogger) *TeamRepository {
	return &TeamRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TeamRepository) FindAll() ([]*content.TeamMember, error) {
	const query = `SELECT id, name, role, bio, photo_path, position FROM team_members ORDER BY position`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query team members", "error", err.Error())
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	var members []*content.TeamMember
	for rows.Next() {
		var member content.TeamMember
		var role, bio, photoPath sql.NullString
		if err := rows.Scan(&member.ID, &member.Name, &role, &bio, &photoPath, &member.Position); err != nil {
			r.logger.Database().Error("Failed to scan team member row", "error", err.Error())
			continue
		}
		member.Role = role.String
		member.Bio = bio.String
		if photoPath.Valid {
			member.PhotoPath = &photoPath.String
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "content")
	}
	return members, nil
}

func (r *TeamRepository) Store(member *content.TeamMember) error {
	position, err := nextPosition(r.db, "team_members")
	if err != nil {
		return err
	}
	member.Position = position

	const query = `INSERT INTO team_members (id, name, role, bio, photo_path, position) VALUES (?, ?, ?, ?, ?, ?)`

	r.logger.Database().Debug("Executing team member insert", "id", member.ID)
	if _, err := r.db.Exec(query, member.ID, member.Name, member.Role, member.Bio, member.PhotoPath, member.Position); err != nil {
		r.logger.Database().Error("Team member insert failed", "error", err.Error(), "id", member.ID)
		return fmt.Errorf("failed to insert team member: %w", err)
	}
	return nil
}

var teamPatchColumns = map[string]string{
	"name":      "name",
	"role":      "role",
	"bio":       "bio",
	"photoPath": "photo_path",
}

func (r *TeamRepository) Update(id string, fields map[string]any) error {
	return patchUpdate(r.db, r.logger, "team_members", teamPatchColumns, id, fields)
}

func (r *TeamRepository) Delete(id string) error {
	return deleteByID(r.db, r.logger, "team_members", id)
}

func (r *TeamRepository) Reorder(orderedIDs []string) error {
	return reorderPositions(r.db, r.logger, "team_members", orderedIDs)
}
