package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestVideoRefExcludesSoftDeletedRows(t *testing.T) {
	f, ok := reflect.TypeOf(VideoRef{}).FieldByName("DeletedAt")
	assert.True(t, ok, "VideoRef must carry DeletedAt so queries skip soft-deleted videos")
	assert.Equal(t, reflect.TypeOf(gorm.DeletedAt{}), f.Type)
	assert.Equal(t, "videos", VideoRef{}.TableName())
}
