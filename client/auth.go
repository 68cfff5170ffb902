package client

import (
	"context"
	"net/http"
	"time"
)

type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	CanSeeMCQ       bool   `json:"canSeeMCQ"`
	CanSeeTrueFalse bool   `json:"canSeeTrueFalse"`
	CanSeeFillBlank bool   `json:"canSeeFillBlank"`
}

type User struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	CanSeeMCQ       bool      `json:"canSeeMCQ"`
	CanSeeTrueFalse bool      `json:"canSeeTrueFalse"`
	CanSeeFillBlank bool      `json:"canSeeFillBlank"`
	CreatedAt       time.Time `json:"created_at"`
}

func (c *Client) Signup(ctx context.Context, in SignupInput) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/signup", in, nil)
}

// Login xác thực và gắn session mới vào client. Cache cũ bị xoá
// để dữ liệu của user trước không rò sang user sau.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var env struct {
		Token           string `json:"token"`
		Name            string `json:"name"`
		Email           string `json:"email"`
		Role            string `json:"role"`
		CanSeeMCQ       bool   `json:"canSeeMCQ"`
		CanSeeTrueFalse bool   `json:"canSeeTrueFalse"`
		CanSeeFillBlank bool   `json:"canSeeFillBlank"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &env); err != nil {
		return nil, err
	}

	c.cache.Clear()
	c.session = &Session{
		Token:           env.Token,
		Name:            env.Name,
		Email:           env.Email,
		Role:            env.Role,
		CanSeeMCQ:       env.CanSeeMCQ,
		CanSeeTrueFalse: env.CanSeeTrueFalse,
		CanSeeFillBlank: env.CanSeeFillBlank,
	}
	return c.session, nil
}

// UserDetail đọc hồ sơ của chính user qua cache (tag User).
func (c *Client) UserDetail(ctx context.Context) (User, error) {
	v, err := c.cache.GetOrFetch(tagUser+":DETAIL", func() (interface{}, []Tag, error) {
		var env struct {
			User User `json:"user"`
		}
		if err := c.doJSON(ctx, http.MethodGet, "/auth/userDetail", nil, &env); err != nil {
			return nil, nil, err
		}
		return env.User, []Tag{{Type: tagUser, ID: "DETAIL"}}, nil
	})
	if err != nil {
		return User{}, err
	}
	return v.(User), nil
}

// UpdateUser sửa name/email của chính user rồi invalidate tag User.
func (c *Client) UpdateUser(ctx context.Context, name, email string) error {
	body := map[string]string{"name": name, "email": email}
	if err := c.doJSON(ctx, http.MethodPut, "/auth/updateUser", body, nil); err != nil {
		return err
	}
	c.cache.Invalidate(Tag{Type: tagUser, ID: "DETAIL"})
	if c.session != nil {
		c.session.Name = name
		c.session.Email = email
	}
	return nil
}
