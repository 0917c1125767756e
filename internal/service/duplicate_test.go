package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portaldocs/internal/domain/models"
	"portaldocs/internal/taxonomy"
)

func newGuardFixture(t *testing.T) (*DuplicateGuard, *memDocumentRepo) {
	t.Helper()
	rules, err := taxonomy.NewResolver()
	require.NoError(t, err)
	repo := newMemDocumentRepo()
	return NewDuplicateGuard(repo, rules), repo
}

func seedDocument(t *testing.T, repo *memDocumentRepo, doc *models.Document) *models.Document {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), doc))
	return doc
}

func TestDuplicateGuardNoMatch(t *testing.T) {
	guard, _ := newGuardFixture(t)

	check, err := guard.Check(context.Background(), models.MacroInstitutional, "Estatuto Social", "", "Estatuto Social 2024", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, check.IsDuplicate)
}

func TestDuplicateGuardMatchesByNumber(t *testing.T) {
	guard, repo := newGuardFixture(t)

	num := "07/2024"
	existing := seedDocument(t, repo, &models.Document{
		Title:          "Portaria nº 07/2024",
		MacroCategory:  models.MacroInternalNormative,
		SubCategory:    "Portaria",
		DocumentNumber: &num,
	})

	// Same number, different title: still a duplicate
	check, err := guard.Check(context.Background(), models.MacroInternalNormative, "portaria", num, "Outro Título", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, check.IsDuplicate)
	assert.Equal(t, existing.ID, check.ExistingDocumentID)
	assert.True(t, check.CanVersion)

	// Different number is not a duplicate even with the same title
	check, err = guard.Check(context.Background(), models.MacroInternalNormative, "Portaria", "08/2024", existing.Title, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, check.IsDuplicate)
}

func TestDuplicateGuardMatchesByTitleCaseInsensitive(t *testing.T) {
	guard, repo := newGuardFixture(t)

	seedDocument(t, repo, &models.Document{
		Title:         "Prestação de Contas 2023",
		MacroCategory: models.MacroAccountability,
		SubCategory:   "Prestação de Contas",
	})

	check, err := guard.Check(context.Background(), models.MacroAccountability, "PRESTAÇÃO DE CONTAS", "", "  prestação de contas 2023 ", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, check.IsDuplicate)
	// ACCOUNTABILITY forbids versioning, so the collision cannot be resolved
	// with a new revision
	assert.False(t, check.CanVersion)
}

func TestDuplicateGuardDifferentClassification(t *testing.T) {
	guard, repo := newGuardFixture(t)

	seedDocument(t, repo, &models.Document{
		Title:         "Relatório Anual 2024",
		MacroCategory: models.MacroAccountability,
		SubCategory:   "Relatório Anual",
	})

	// Same title under a different macro-category is a different document
	check, err := guard.Check(context.Background(), models.MacroGovernance, "Relatório Anual", "", "Relatório Anual 2024", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, check.IsDuplicate)
}

func TestDuplicateGuardExcludesSelf(t *testing.T) {
	guard, repo := newGuardFixture(t)

	existing := seedDocument(t, repo, &models.Document{
		Title:         "Código de Conduta",
		MacroCategory: models.MacroGovernance,
		SubCategory:   "Código de Conduta",
	})

	// An update of the document itself never collides with its own identity
	check, err := guard.Check(context.Background(), models.MacroGovernance, "Código de Conduta", "", "Código de Conduta", existing.ID)
	require.NoError(t, err)
	assert.False(t, check.IsDuplicate)
}
