package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portaldocs/internal/domain"
	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/services"
)

func validRevisionReq(actor models.Actor) *services.CreateRevisionRequest {
	return &services.CreateRevisionRequest{
		Label:       "v1",
		FilePath:    "documents/regimento-v1.pdf",
		FileSize:    4096,
		ContentHash: "sha256:0a1b2c",
		Actor:       actor,
	}
}

func TestCreateRevisionNumbersAndSingleCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := mustCreate(t, f, validCreateReq(editor))

	rev1 := mustAddRevision(t, f, doc, validRevisionReq(editor))
	assert.Equal(t, 1, rev1.Number)
	assert.True(t, rev1.IsCurrent)

	req2 := validRevisionReq(editor)
	req2.Label = "v2"
	req2.ContentHash = "sha256:ffff"
	rev2 := mustAddRevision(t, f, doc, req2)
	assert.Equal(t, 2, rev2.Number)
	assert.True(t, rev2.IsCurrent)

	// Exactly one current revision, and the document points at it
	assert.Equal(t, 1, f.revRepo.currentCount(doc.ID))
	stored, err := f.docSvc.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentRevisionID)
	assert.Equal(t, rev2.ID, *stored.CurrentRevisionID)

	revs, err := f.verSvc.ListRevisions(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, 2, revs[0].Number) // newest first
}

func TestCreateRevisionFirstAlwaysAllowed(t *testing.T) {
	f := newFixture(t)

	// ACCOUNTABILITY forbids versioning, but the first file is not a version
	req := &services.CreateDocumentRequest{
		Title:         "Balanço Patrimonial 2024",
		MacroCategory: "ACCOUNTABILITY",
		SubCategory:   "Balanço Patrimonial",
		ReferenceYear: strPtr("2024"),
		Destinations:  []string{"TRANSPARENCY"},
		Actor:         editor,
	}
	doc := mustCreate(t, f, req)

	rev := mustAddRevision(t, f, doc, validRevisionReq(editor))
	assert.Equal(t, 1, rev.Number)

	// The second revision is real versioning and is rejected
	second := validRevisionReq(editor)
	second.Label = "v2"
	_, err := f.verSvc.CreateRevision(context.Background(), doc.ID, second)
	assert.ErrorIs(t, err, domain.ErrVersioningNotAllowed)
}

func TestCreateRevisionSubCategoryOverrideAllowsVersioning(t *testing.T) {
	f := newFixture(t)

	req := &services.CreateDocumentRequest{
		Title:          "Edital de Licitação nº 04/2025",
		MacroCategory:  "OFFICIAL_ACTS",
		SubCategory:    "Edital de Licitação",
		DocumentNumber: strPtr("04/2025"),
		DocumentDate:   strPtr("2025-03-10"),
		Destinations:   []string{"BIDDINGS"},
		Actor:          editor,
	}
	doc := mustCreate(t, f, req)

	mustAddRevision(t, f, doc, validRevisionReq(editor))
	rect := validRevisionReq(editor)
	rect.Label = "Retificação 1"
	rev2 := mustAddRevision(t, f, doc, rect)
	assert.Equal(t, 2, rev2.Number)
}

func TestCreateRevisionStatusDimension(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	normativeDoc := mustCreate(t, f, &services.CreateDocumentRequest{
		Title:          "Portaria nº 01/2025",
		MacroCategory:  "INTERNAL_NORMATIVE",
		SubCategory:    "Portaria",
		DocumentNumber: strPtr("01/2025"),
		Description:    strPtr("Institui a comissão de avaliação"),
		Destinations:   []string{"TRANSPARENCY"},
		Actor:          editor,
	})

	t.Run("normative status required", func(t *testing.T) {
		_, err := f.verSvc.CreateRevision(ctx, normativeDoc.ID, validRevisionReq(editor))
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, fieldNames(verr), "normative_status")
	})

	t.Run("wrong dimension rejected", func(t *testing.T) {
		req := validRevisionReq(editor)
		req.NormativeStatus = strPtr("current")
		req.ContractualStatus = strPtr("current")
		_, err := f.verSvc.CreateRevision(ctx, normativeDoc.ID, req)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, fieldNames(verr), "contractual_status")
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		req := validRevisionReq(editor)
		req.NormativeStatus = strPtr("revoked")
		_, err := f.verSvc.CreateRevision(ctx, normativeDoc.ID, req)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, fieldNames(verr), "normative_status")
	})

	t.Run("valid normative status accepted", func(t *testing.T) {
		req := validRevisionReq(editor)
		req.NormativeStatus = strPtr("current")
		rev := mustAddRevision(t, f, normativeDoc, req)
		require.NotNil(t, rev.NormativeStatus)
		assert.Equal(t, models.NormativeCurrent, *rev.NormativeStatus)
		assert.Nil(t, rev.ContractualStatus)
	})
}

func TestCreateRevisionShapeValidation(t *testing.T) {
	f := newFixture(t)

	doc := mustCreate(t, f, validCreateReq(editor))

	_, err := f.verSvc.CreateRevision(context.Background(), doc.ID, &services.CreateRevisionRequest{
		ApprovalDate: "10-03-2025",
		Actor:        editor,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	names := fieldNames(verr)
	assert.Contains(t, names, "label")
	assert.Contains(t, names, "file_path")
	assert.Contains(t, names, "file_size")
	assert.Contains(t, names, "content_hash")
	assert.Contains(t, names, "approval_date")
}

func TestCreateRevisionOnArchivedDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := mustCreate(t, f, validCreateReq(editor))
	_, err := f.docSvc.Publish(ctx, doc.ID, publisher)
	require.NoError(t, err)
	_, err = f.docSvc.Archive(ctx, doc.ID, editor)
	require.NoError(t, err)

	_, err = f.verSvc.CreateRevision(ctx, doc.ID, validRevisionReq(editor))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPromoteRevision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := mustCreate(t, f, validCreateReq(editor))
	rev1 := mustAddRevision(t, f, doc, validRevisionReq(editor))
	req2 := validRevisionReq(editor)
	req2.Label = "v2"
	rev2 := mustAddRevision(t, f, doc, req2)

	// Roll back to the first revision
	promoted, err := f.verSvc.PromoteRevision(ctx, doc.ID, rev1.ID, publisher)
	require.NoError(t, err)
	assert.True(t, promoted.IsCurrent)
	assert.Equal(t, rev1.ID, promoted.ID)

	assert.Equal(t, 1, f.revRepo.currentCount(doc.ID))
	stored, err := f.docSvc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, rev1.ID, *stored.CurrentRevisionID)

	// The demoted revision is no longer current
	r2, err := f.revRepo.GetByID(ctx, doc.ID, rev2.ID)
	require.NoError(t, err)
	assert.False(t, r2.IsCurrent)

	entries, err := f.docSvc.History(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ActionRevisionPromoted, entries[0].Action)
}

func TestPromoteRevisionRequiresRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := mustCreate(t, f, validCreateReq(editor))
	rev := mustAddRevision(t, f, doc, validRevisionReq(editor))

	_, err := f.verSvc.PromoteRevision(ctx, doc.ID, rev.ID, editor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPromoteForeignRevisionNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	docA := mustCreate(t, f, validCreateReq(editor))
	revA := mustAddRevision(t, f, docA, validRevisionReq(editor))

	reqB := validCreateReq(editor)
	reqB.Title = "Organograma 2025"
	reqB.SubCategory = "Organograma"
	docB := mustCreate(t, f, reqB)

	// revA belongs to docA; promoting it through docB must not resolve
	_, err := f.verSvc.PromoteRevision(ctx, docB.ID, revA.ID, publisher)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPromoteCurrentRevisionIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := mustCreate(t, f, validCreateReq(editor))
	rev := mustAddRevision(t, f, doc, validRevisionReq(editor))

	before, err := f.docSvc.History(ctx, doc.ID)
	require.NoError(t, err)

	promoted, err := f.verSvc.PromoteRevision(ctx, doc.ID, rev.ID, publisher)
	require.NoError(t, err)
	assert.True(t, promoted.IsCurrent)

	after, err := f.docSvc.History(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, after, len(before)) // no promotion entry recorded
}
