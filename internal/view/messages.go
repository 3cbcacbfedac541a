package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys for user-facing texts. The catalog below holds the Brazilian
// Portuguese wording shown in the form.
const (
	MsgTitle           = "Register approvals"
	MsgSubtitle        = "Register your approval in a public exam"
	MsgSubmitFailed    = "Submission failed. Check the console for details."
	MsgSubmitSucceeded = "Registration completed successfully!"
	MsgSubmitting      = "Sending..."
	MsgSubmit          = "Register approval"
	MsgPhotoTooLarge   = "The image must be at most %s"
	MsgPhotoType       = "Only PNG, JPG or JPEG images are accepted"
	MsgPhotoName       = "The image file name must be at most %d characters"
	MsgPhotoHint       = "PNG, JPG or JPEG (max. %s)"
	MsgPhotoUpload     = "Click to upload"
	MsgIncomplete      = "Fill in every field before submitting."
	MsgFooter          = "Your data will be stored securely"
)

// Language is the locale every page is rendered in.
var Language = language.BrazilianPortuguese

func init() {
	for key, text := range map[string]string{
		MsgTitle:           "Cadastro de Aprovados",
		MsgSubtitle:        "Registre sua aprovação em concurso público",
		MsgSubmitFailed:    "Erro ao cadastrar. Verifique o console para mais detalhes.",
		MsgSubmitSucceeded: "Cadastro realizado com sucesso!",
		MsgSubmitting:      "Enviando...",
		MsgSubmit:          "Cadastrar Aprovação",
		MsgPhotoTooLarge:   "A imagem deve ter no máximo %s",
		MsgPhotoType:       "Apenas imagens PNG, JPG ou JPEG são aceitas",
		MsgPhotoName:       "O nome do arquivo da imagem deve ter no máximo %d caracteres",
		MsgPhotoHint:       "PNG, JPG ou JPEG (máx. %s)",
		MsgPhotoUpload:     "Clique para fazer upload",
		MsgIncomplete:      "Preencha todos os campos antes de enviar.",
		MsgFooter:          "Seus dados serão armazenados com segurança",
	} {
		_ = message.SetString(Language, key, text)
	}
}

var printer = message.NewPrinter(Language)

// T renders a message key in the page language.
func T(key string, args ...any) string {
	return printer.Sprintf(key, args...)
}

// SizeLabel renders a byte count as MB, or KB below one megabyte, with one
// decimal place when the value is not whole.
func SizeLabel(n int64) string {
	const kb, mb = 1024, 1024 * 1024
	unit, div := "MB", int64(mb)
	if n < mb {
		unit, div = "KB", kb
	}
	if n%div == 0 {
		return printer.Sprintf("%d%s", n/div, unit)
	}
	return printer.Sprintf("%.1f%s", float64(n)/float64(div), unit)
}
