package store

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marmos91/retrogg/pkg/models"
)

// ============================================
// TOKEN OPERATIONS
// ============================================

// captchaLength is how many characters a captcha code carries.
const captchaLength = 4

// newTokenID generates a 32-character hex token identifier.
func newTokenID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// newCaptchaCode generates a random uppercase captcha code.
func newCaptchaCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := make([]byte, captchaLength)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = letters[int(b)%len(letters)]
	}
	return string(buf)
}

func (s *GORMStore) CreateToken(ctx context.Context) (*models.Token, error) {
	token := &models.Token{
		TokenID:     newTokenID(),
		CaptchaCode: newCaptchaCode(),
		CreatedAt:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

func (s *GORMStore) GetToken(ctx context.Context, tokenID string) (*models.Token, error) {
	var token models.Token
	err := s.db.WithContext(ctx).
		Where("token_id = ? AND used = ? AND created_at > ?",
			tokenID, false, time.Now().Add(-models.TokenValidity)).
		First(&token).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrTokenNotFound)
	}
	return &token, nil
}

func (s *GORMStore) ValidateToken(ctx context.Context, tokenID, answer string) error {
	token, err := s.GetToken(ctx, tokenID)
	if err != nil {
		return err
	}

	// Tokens are single use: consume before checking the answer so a wrong
	// answer still burns the token.
	result := s.db.WithContext(ctx).
		Model(&models.Token{}).
		Where("token_id = ? AND used = ?", tokenID, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrTokenNotFound
	}

	if !strings.EqualFold(answer, token.CaptchaCode) {
		return models.ErrInvalidCaptcha
	}
	return nil
}

func (s *GORMStore) CleanupTokens(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-models.TokenValidity)
	result := s.db.WithContext(ctx).
		Where("used = ? OR created_at < ?", true, cutoff).
		Delete(&models.Token{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
