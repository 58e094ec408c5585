package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/markdown-blog-api/internal/models"
)

// Error codes carried alongside display messages
const (
	CodeRequired     = "required"
	CodeTooLong      = "too_long"
	CodeInvalidChars = "invalid_chars"
)

// forbiddenTagChars may not appear in tag names
const forbiddenTagChars = `<>/\`

// FieldError is a single validation failure
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the outcome of validating one payload
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

// Messages returns the display messages in order
func (r Result) Messages() []string {
	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		messages = append(messages, e.Message)
	}
	return messages
}

// Err converts an invalid result to a validation *AppError, nil when valid
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	messages := r.Messages()
	return models.NewValidationError(messages[0], messages...)
}

func newResult(errors []FieldError) Result {
	return Result{Valid: len(errors) == 0, Errors: errors}
}

// ArticleInput holds the article fields present in a payload; nil means absent
type ArticleInput struct {
	Title   *string
	Content *string
}

// ValidateArticle checks only the fields that are present
func ValidateArticle(input ArticleInput) Result {
	var errors []FieldError

	if input.Title != nil {
		errors = appendText(errors, "title", *input.Title, models.MaxTitleLength)
	}
	if input.Content != nil {
		errors = appendText(errors, "content", *input.Content, models.MaxContentLength)
	}

	return newResult(errors)
}

// ValidateCreateArticle validates a create payload where both fields are required
func ValidateCreateArticle(req *models.CreateArticleRequest) Result {
	return ValidateArticle(ArticleInput{Title: &req.Title, Content: &req.Content})
}

// ValidateUpdateArticle validates the present fields of a partial update
func ValidateUpdateArticle(req *models.UpdateArticleRequest) Result {
	return ValidateArticle(ArticleInput{Title: req.Title, Content: req.Content})
}

// TagInput holds the tag fields of a payload
type TagInput struct {
	Name string
}

// ValidateTag checks presence, length and forbidden characters of a tag name
func ValidateTag(input TagInput) Result {
	var errors []FieldError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, FieldError{Field: "name", Code: CodeRequired, Message: "name is required"})
		return newResult(errors)
	}

	if n := utf8.RuneCountInString(input.Name); n > models.MaxTagNameLength {
		errors = append(errors, FieldError{
			Field:   "name",
			Code:    CodeTooLong,
			Message: fmt.Sprintf("name must be at most %d characters (has %d)", models.MaxTagNameLength, n),
		})
	}

	if strings.ContainsAny(input.Name, forbiddenTagChars) {
		errors = append(errors, FieldError{
			Field:   "name",
			Code:    CodeInvalidChars,
			Message: `name must not contain any of < > / \`,
		})
	}

	return newResult(errors)
}

func appendText(errors []FieldError, field, value string, maxLen int) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errors, FieldError{Field: field, Code: CodeRequired, Message: field + " is required"})
	}
	if n := utf8.RuneCountInString(value); n > maxLen {
		return append(errors, FieldError{
			Field:   field,
			Code:    CodeTooLong,
			Message: fmt.Sprintf("%s must be at most %d characters (has %d)", field, maxLen, n),
		})
	}
	return errors
}
