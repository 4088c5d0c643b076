package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		user, pass string
		want       string
	}{
		{
			name: "empty",
			in:   "  ",
			want: "",
		},
		{
			name: "native dsn untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/app?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/app?parseTime=true",
		},
		{
			name: "url with defaults",
			in:   "mysql://root:pw@db:3306/app",
			want: "root:pw@tcp(db:3306)/app?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc params and overrides",
			in:   "jdbc:mysql://db:3306/app?useUnicode=true&characterEncoding=utf8&useSSL=false&serverTimezone=UTC",
			user: "svc",
			pass: "secret",
			want: "svc:secret@tcp(db:3306)/app?charset=utf8&loc=UTC&parseTime=true&tls=false",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeMySQLDSN(tt.in, tt.user, tt.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db)/app", maskDSN("root:pw@tcp(db)/app"))
	assert.Equal(t, "tcp(db)/app", maskDSN("tcp(db)/app"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewMemory(t *testing.T) {
	db, err := NewMemory()
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
