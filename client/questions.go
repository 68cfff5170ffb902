package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type MCQ struct {
	ID        uint      `json:"id"`
	Category  string    `json:"category"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TrueFalseQuestion struct {
	ID        uint      `json:"id"`
	Category  string    `json:"category"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FillBlankQuestion struct {
	ID        uint      `json:"id"`
	Category  string    `json:"category"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MCQInput struct {
	Category string   `json:"category"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type TrueFalseInput struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FillBlankInput struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type MCQUpdate struct {
	ID uint `json:"id"`
	MCQInput
}

type TrueFalseUpdate struct {
	ID uint `json:"id"`
	TrueFalseInput
}

type FillBlankUpdate struct {
	ID uint `json:"id"`
	FillBlankInput
}

// BulkResult là kết quả từng phần tử của bulk-update.
type BulkResult struct {
	ID      uint   `json:"id"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type bulkUpdateResp struct {
	Results []BulkResult `json:"results"`
}

// Tag type cho từng loại câu hỏi, khớp với cache tag phía view.
const (
	tagMCQ  = "MCQ"
	tagTF   = "TF"
	tagFB   = "FB"
	tagUser = "User"
)

/* ========== MCQ ========== */

// MCQList đọc toàn bộ câu hỏi MCQ qua cache; các caller đồng thời
// cùng dùng chung một fetch đang bay.
func (c *Client) MCQList(ctx context.Context) ([]MCQ, error) {
	v, err := c.cache.GetOrFetch(tagMCQ+":LIST", func() (interface{}, []Tag, error) {
		var env struct {
			Questions []MCQ `json:"questions"`
		}
		if err := c.doJSON(ctx, http.MethodGet, "/api/questions", nil, &env); err != nil {
			return nil, nil, err
		}
		tags := []Tag{{Type: tagMCQ, ID: "LIST"}}
		for _, q := range env.Questions {
			tags = append(tags, Tag{Type: tagMCQ, ID: fmt.Sprintf("%d", q.ID)})
		}
		return env.Questions, tags, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]MCQ), nil
}

// MCQByCategory là derived view: lấy full list rồi lọc category
// case-insensitive phía client.
func (c *Client) MCQByCategory(ctx context.Context, category string) ([]MCQ, error) {
	all, err := c.MCQList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MCQ, 0)
	for _, q := range all {
		if strings.EqualFold(q.Category, category) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (c *Client) AddMCQ(ctx context.Context, in MCQInput) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/questions/add", in, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagMCQ, ID: "LIST"})
	return nil
}

func (c *Client) BulkAddMCQ(ctx context.Context, in []MCQInput) error {
	body := map[string]interface{}{"questions": in}
	if err := c.doJSON(ctx, http.MethodPost, "/api/questions/bulk-add", body, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagMCQ, ID: "LIST"})
	return nil
}

func (c *Client) UpdateMCQ(ctx context.Context, id uint, in MCQInput) error {
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/questions/%d", id), in, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagMCQ, ID: fmt.Sprintf("%d", id)})
	return nil
}

func (c *Client) BulkUpdateMCQ(ctx context.Context, in []MCQUpdate) ([]BulkResult, error) {
	body := map[string]interface{}{"questions": in}
	var env bulkUpdateResp
	if err := c.doJSON(ctx, http.MethodPut, "/api/questions/bulk-update", body, &env); err != nil {
		return nil, err
	}
	c.cache.Invalidate(Tag{Type: tagMCQ, ID: "LIST"})
	return env.Results, nil
}

func (c *Client) DeleteMCQ(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/questions/%d", id), nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagMCQ, ID: fmt.Sprintf("%d", id)})
	return nil
}

/* ========== True/False ========== */

func (c *Client) TrueFalseList(ctx context.Context) ([]TrueFalseQuestion, error) {
	v, err := c.cache.GetOrFetch(tagTF+":LIST", func() (interface{}, []Tag, error) {
		var env struct {
			Questions []TrueFalseQuestion `json:"questions"`
		}
		if err := c.doJSON(ctx, http.MethodGet, "/api/truefalse", nil, &env); err != nil {
			return nil, nil, err
		}
		tags := []Tag{{Type: tagTF, ID: "LIST"}}
		for _, q := range env.Questions {
			tags = append(tags, Tag{Type: tagTF, ID: fmt.Sprintf("%d", q.ID)})
		}
		return env.Questions, tags, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]TrueFalseQuestion), nil
}

func (c *Client) TrueFalseByCategory(ctx context.Context, category string) ([]TrueFalseQuestion, error) {
	all, err := c.TrueFalseList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TrueFalseQuestion, 0)
	for _, q := range all {
		if strings.EqualFold(q.Category, category) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (c *Client) AddTrueFalse(ctx context.Context, in TrueFalseInput) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/truefalse/add", in, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagTF, ID: "LIST"})
	return nil
}

func (c *Client) BulkAddTrueFalse(ctx context.Context, in []TrueFalseInput) error {
	body := map[string]interface{}{"questions": in}
	if err := c.doJSON(ctx, http.MethodPost, "/api/truefalse/bulk-add", body, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagTF, ID: "LIST"})
	return nil
}

func (c *Client) UpdateTrueFalse(ctx context.Context, id uint, in TrueFalseInput) error {
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/truefalse/%d", id), in, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagTF, ID: fmt.Sprintf("%d", id)})
	return nil
}

func (c *Client) BulkUpdateTrueFalse(ctx context.Context, in []TrueFalseUpdate) ([]BulkResult, error) {
	body := map[string]interface{}{"questions": in}
	var env bulkUpdateResp
	if err := c.doJSON(ctx, http.MethodPut, "/api/truefalse/bulk-update", body, &env); err != nil {
		return nil, err
	}
	c.cache.Invalidate(Tag{Type: tagTF, ID: "LIST"})
	return env.Results, nil
}

func (c *Client) DeleteTrueFalse(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/truefalse/%d", id), nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagTF, ID: fmt.Sprintf("%d", id)})
	return nil
}

/* ========== Fill in the blank ========== */

func (c *Client) FillBlankList(ctx context.Context) ([]FillBlankQuestion, error) {
	v, err := c.cache.GetOrFetch(tagFB+":LIST", func() (interface{}, []Tag, error) {
		var env struct {
			Questions []FillBlankQuestion `json:"questions"`
		}
		if err := c.doJSON(ctx, http.MethodGet, "/api/fillblank", nil, &env); err != nil {
			return nil, nil, err
		}
		tags := []Tag{{Type: tagFB, ID: "LIST"}}
		for _, q := range env.Questions {
			tags = append(tags, Tag{Type: tagFB, ID: fmt.Sprintf("%d", q.ID)})
		}
		return env.Questions, tags, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]FillBlankQuestion), nil
}

func (c *Client) FillBlankByCategory(ctx context.Context, category string) ([]FillBlankQuestion, error) {
	all, err := c.FillBlankList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FillBlankQuestion, 0)
	for _, q := range all {
		if strings.EqualFold(q.Category, category) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (c *Client) AddFillBlank(ctx context.Context, in FillBlankInput) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/fillblank/add", in, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagFB, ID: "LIST"})
	return nil
}

func (c *Client) BulkAddFillBlank(ctx context.Context, in []FillBlankInput) error {
	body := map[string]interface{}{"questions": in}
	if err := c.doJSON(ctx, http.MethodPost, "/api/fillblank/bulk-add", body, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagFB, ID: "LIST"})
	return nil
}

func (c *Client) UpdateFillBlank(ctx context.Context, id uint, in FillBlankInput) error {
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/fillblank/%d", id), in, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagFB, ID: fmt.Sprintf("%d", id)})
	return nil
}

func (c *Client) BulkUpdateFillBlank(ctx context.Context, in []FillBlankUpdate) ([]BulkResult, error) {
	body := map[string]interface{}{"questions": in}
	var env bulkUpdateResp
	if err := c.doJSON(ctx, http.MethodPut, "/api/fillblank/bulk-update", body, &env); err != nil {
		return nil, err
	}
	c.cache.Invalidate(Tag{Type: tagFB, ID: "LIST"})
	return env.Results, nil
}

func (c *Client) DeleteFillBlank(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/fillblank/%d", id), nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagFB, ID: fmt.Sprintf("%d", id)})
	return nil
}
