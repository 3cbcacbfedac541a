package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhotoPolicy_Check(t *testing.T) {
	p := DefaultPhotoPolicy()

	assert.NoError(t, p.Check(1024, "image/png"))
	assert.NoError(t, p.Check(DefaultMaxPhotoBytes, "image/jpeg"))
	assert.NoError(t, p.Check(10, "IMAGE/JPG"))
	assert.NoError(t, p.Check(10, "image/png; charset=binary"))

	assert.ErrorIs(t, p.Check(DefaultMaxPhotoBytes+1, "image/png"), ErrPhotoTooLarge)
	assert.ErrorIs(t, p.Check(10, "image/gif"), ErrPhotoTypeNotAllowed)
	assert.ErrorIs(t, p.Check(10, ""), ErrPhotoTypeNotAllowed)
}

func TestPhotoPolicy_ZeroValuesDisableChecks(t *testing.T) {
	p := NewPhotoPolicy(0, nil)
	assert.NoError(t, p.Check(1<<40, "application/octet-stream"))
}

func TestPhotoPolicy_CheckName(t *testing.T) {
	p := DefaultPhotoPolicy()

	assert.NoError(t, p.CheckName("foto.png"))
	assert.NoError(t, p.CheckName(strings.Repeat("é", MaxPhotoNameLength)))
	assert.ErrorIs(t, p.CheckName(strings.Repeat("a", MaxPhotoNameLength+1)), ErrPhotoNameTooLong)
}

func TestPhoto_Validate(t *testing.T) {
	valid := Photo{Filename: "me.png", ContentType: "image/png", Size: 10, StorageKey: "drafts/x/y.png"}
	assert.NoError(t, valid.Validate())

	unsafe := valid
	unsafe.StorageKey = "../etc/passwd"
	assert.ErrorIs(t, unsafe.Validate(), ErrPhotoInvalid)

	unnamed := valid
	unnamed.Filename = ""
	assert.ErrorIs(t, unnamed.Validate(), ErrPhotoInvalid)
}
