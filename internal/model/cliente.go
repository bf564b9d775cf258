package model

import (
	"time"

	"github.com/google/uuid"
)

// ClienteMostradorID is the reserved walk-in register customer. It is seeded
// at startup, always listed first, and rejected by the ordinary update/delete
// endpoints. Sales with no explicit customer reference this id.
var ClienteMostradorID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Email     *string
	Telefono  *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }

// EsMostrador reports whether c is the reserved register customer.
func (c *Cliente) EsMostrador() bool { return c.ID == ClienteMostradorID }
