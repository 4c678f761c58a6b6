package models

import "errors"

var (
	// ErrInvalidCredentials はユーザー名またはパスワードが一致しない場合に返す
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAuthRequired はセッションが存在しない・期限切れの場合に返す
	ErrAuthRequired = errors.New("authentication required")
	// ErrActivityNotFound は指定された名前のクラブが存在しない場合に返す
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered は生徒が既にそのクラブに登録済みの場合に返す
	ErrAlreadyRegistered = errors.New("student is already signed up")
	// ErrNotRegistered は生徒がそのクラブに登録されていない場合に返す
	ErrNotRegistered = errors.New("student is not signed up for this activity")

	ErrUserNotFound    = errors.New("user not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrSessionNotFound = errors.New("session not found")
)
