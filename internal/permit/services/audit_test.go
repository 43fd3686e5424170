package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajarws/schoolcore/internal/permit/models"
)

func TestAuditSnapshotIsStringKeyed(t *testing.T) {
	class := &models.SchoolClass{ID: 3, Name: "7A", GradeLevel: 7}

	snap := auditSnapshot(class)
	require.NotNil(t, snap)
	assert.Equal(t, "7A", snap["name"])
	assert.Equal(t, float64(7), snap["gradeLevel"])
}

func TestAuditSnapshotExcludesCredential(t *testing.T) {
	user := &models.User{ID: 1, Username: "owner", Password: "$2a$12$hash"}

	snap := auditSnapshot(user)
	require.NotNil(t, snap)
	assert.Equal(t, "owner", snap["username"])
	assert.NotContains(t, snap, "password")
}

func TestAuditSnapshotNil(t *testing.T) {
	assert.Nil(t, auditSnapshot(nil))
}

func TestAuditActorZeroMeansSystem(t *testing.T) {
	assert.Nil(t, auditActor(0))
	assert.Nil(t, auditActor(-1))

	actor := auditActor(7)
	require.NotNil(t, actor)
	assert.Equal(t, int64(7), *actor)
}
