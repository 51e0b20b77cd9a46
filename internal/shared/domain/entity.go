package domain

import "time"

// BaseEntity carries the store-assigned identity and timestamps of an entity.
// A zero ID means the entity has not been persisted yet.
type BaseEntity struct {
	id        int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBaseEntity creates an unsaved entity stamped with now.
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{createdAt: now, updatedAt: now}
}

// RehydrateBaseEntity recreates an entity from persisted state.
func RehydrateBaseEntity(id int64, createdAt, updatedAt time.Time) BaseEntity {
	return BaseEntity{id: id, createdAt: createdAt, updatedAt: updatedAt}
}

func (e BaseEntity) ID() int64            { return e.id }
func (e BaseEntity) CreatedAt() time.Time { return e.createdAt }
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }
func (e BaseEntity) IsNew() bool          { return e.id == 0 }

// AssignID records the identity handed out by the store on insert.
func (e *BaseEntity) AssignID(id int64) {
	e.id = id
}

// Touch updates the updatedAt timestamp.
func (e *BaseEntity) Touch(now time.Time) {
	e.updatedAt = now
}
