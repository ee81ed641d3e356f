package openlist

import (
	"encoding/json"
	"time"
)

// Object is an entry of a directory listing.
type Object struct {
	Name     string    `json:"name"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// User is the account behind the current token.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Nick     string `json:"nick"`
	Name     string `json:"name"`
	BasePath string `json:"base_path"`
}

// RenameObject is one rename inside a batch.
type RenameObject struct {
	SrcName string `json:"src_name"`
	NewName string `json:"new_name"`
}

// envelope is the response wrapper every OpenList endpoint uses.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}

type listRequest struct {
	Path     string `json:"path"`
	Password string `json:"password"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
	Refresh  bool   `json:"refresh"`
}

type listData struct {
	Content []Object `json:"content"`
	Total   int      `json:"total"`
}

type batchRenameRequest struct {
	SrcDir        string         `json:"src_dir"`
	RenameObjects []RenameObject `json:"rename_objects"`
}

type renameRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}
