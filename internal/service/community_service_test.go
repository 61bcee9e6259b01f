package service

import (
	"context"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	comments := newMemComments()
	svc := NewCommentService(comments, newMemProducts(sampleProducts()...))

	c, err := svc.Create(ctx, 1, &model.CommentInput{ProductID: 1, Text: "  Great hoodie  "})
	require.NoError(t, err)
	assert.Equal(t, "Great hoodie", c.Text)
	assert.Equal(t, 1, c.UserID)
	assert.False(t, c.CreatedAt.IsZero())

	_, err = svc.Create(ctx, 1, &model.CommentInput{ProductID: 404, Text: "hi"})
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))

	_, err = svc.Create(ctx, 1, &model.CommentInput{ProductID: 1, Text: strings.Repeat("x", 1001)})
	assert.True(t, errors.HasCode(err, errors.ErrValidation))

	byProduct, err := svc.GetByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byProduct, 1)

	updated, err := svc.Update(ctx, 1, c.ID, "Still great")
	require.NoError(t, err)
	assert.Equal(t, "Still great", updated.Text)

	require.NoError(t, svc.Delete(ctx, 1, c.ID))
	_, err = svc.GetByID(ctx, c.ID)
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))
}

func TestCommentNonOwnerIsForbidden(t *testing.T) {
	ctx := context.Background()
	comments := newMemComments()
	svc := NewCommentService(comments, newMemProducts(sampleProducts()...))

	c, err := svc.Create(ctx, 1, &model.CommentInput{ProductID: 2, Text: "mine"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, c.ID, "hijack")
	assert.True(t, errors.HasCode(err, errors.ErrForbidden))
	err = svc.Delete(ctx, 2, c.ID)
	assert.True(t, errors.HasCode(err, errors.ErrForbidden))

	stored, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", stored.Text)

	// 不存在的评论返回404而不是403
	_, err = svc.Update(ctx, 2, 999, "x")
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))
}

func TestFeedback(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(&memFeedback{rows: map[int]*model.Feedback{}})

	_, err := svc.Create(ctx, 1, "   ")
	assert.True(t, errors.HasCode(err, errors.ErrValidation))

	f, err := svc.Create(ctx, 1, "Fast delivery")
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, f.ID, "nope")
	assert.True(t, errors.HasCode(err, errors.ErrForbidden))
	assert.True(t, errors.HasCode(svc.Delete(ctx, 2, f.ID), errors.ErrForbidden))

	mine, err := svc.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, svc.Delete(ctx, 1, f.ID))
	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateChecksOwnershipBeforeText(t *testing.T) {
	ctx := context.Background()
	comments := NewCommentService(newMemComments(), newMemProducts(sampleProducts()...))
	feedback := NewFeedbackService(&memFeedback{rows: map[int]*model.Feedback{}})

	c, err := comments.Create(ctx, 1, &model.CommentInput{ProductID: 1, Text: "mine"})
	require.NoError(t, err)
	f, err := feedback.Create(ctx, 1, "mine")
	require.NoError(t, err)

	for _, text := range []string{"", "   ", strings.Repeat("x", 3000)} {
		_, err = comments.Update(ctx, 2, c.ID, text)
		assert.True(t, errors.HasCode(err, errors.ErrForbidden), "comment text %q", text)
		_, err = feedback.Update(ctx, 2, f.ID, text)
		assert.True(t, errors.HasCode(err, errors.ErrForbidden), "feedback text %q", text)
	}

	// 本人提交空文本仍然是校验错误
	_, err = comments.Update(ctx, 1, c.ID, "  ")
	assert.True(t, errors.HasCode(err, errors.ErrValidation))
	_, err = feedback.Update(ctx, 1, f.ID, "")
	assert.True(t, errors.HasCode(err, errors.ErrValidation))
}
