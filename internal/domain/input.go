package domain

import "encoding/json"

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UnmarshalJSON accepts "username" as an alias of "email".
func (in *LoginInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	in.Email = raw.Email
	if in.Email == "" {
		in.Email = raw.Username
	}
	in.Password = raw.Password
	return nil
}

// ProfileInput is the payload of a profile update.
type ProfileInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PasswordChangeInput is the payload of a password change.
type PasswordChangeInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ArticleInput is the payload of an article create or update.
type ArticleInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UnmarshalJSON accepts "content" as an alias of "body".
func (in *ArticleInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title   string `json:"title"`
		Body    string `json:"body"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	in.Title = raw.Title
	in.Body = raw.Body
	if in.Body == "" {
		in.Body = raw.Content
	}
	return nil
}
