package util

import "errors"

var (
	ErrSessionNotFound    = errors.New("session tidak ditemukan")
	ErrSessionNotActive   = errors.New("session sudah berakhir")
	ErrQuestionNotFound   = errors.New("soal tidak ditemukan")
	ErrQuestionMismatch   = errors.New("soal tidak sesuai dengan session")
	ErrMaterialNotFound   = errors.New("materi tidak ditemukan")
	ErrNoQuestions        = errors.New("tidak ada soal untuk materi ini")
	ErrInvalidAnswer      = errors.New("jawaban harus A, B, C, atau D")
	ErrUserNotFound       = errors.New("pengguna tidak ditemukan")
	ErrNISNRegistered     = errors.New("NISN sudah terdaftar")
	ErrInvalidCredentials = errors.New("NISN/email atau password salah")
)

// Stable error codes surfaced to clients alongside the message.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeStateConflict = "STATE_CONFLICT"
	CodeNoQuestions   = "NO_QUESTIONS"
	CodeServerError   = "SERVER_ERROR"
)
