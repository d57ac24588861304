package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/go-playground/validator.v9"

	"github.com/wikid/wikid/internal/domain/locale"
)

func TestLocaleNameValidator(t *testing.T) {
	validate := validator.New()
	_ = validate.RegisterValidation(LocaleNameValidatorTag, LocaleNameValidator)
	type args struct {
		name locale.Name
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "must not have illegal chars",
			args: args{
				"en_US",
			},
			wantErr: true,
		},
		{
			name: "must not have digits",
			args: args{
				"en-001",
			},
			wantErr: true,
		},
		{
			name: "must not be empty",
			args: args{
				"",
			},
			wantErr: true,
		},
		{
			name: "must not have empty subtags",
			args: args{
				"en--US",
			},
			wantErr: true,
		},
		{
			name: "must not end with a dash",
			args: args{
				"en-",
			},
			wantErr: true,
		},
		{
			name: "language subtag must be lower case",
			args: args{
				"EN-US",
			},
			wantErr: true,
		},
		{
			name: "must not have more than three subtags",
			args: args{
				"zh-Hant-TW-x",
			},
			wantErr: true,
		},
		{
			name: "plain language should work",
			args: args{
				"fr",
			},
			wantErr: false,
		},
		{
			name: "language with region should work",
			args: args{
				"en-US",
			},
			wantErr: false,
		},
		{
			name: "language with script and region should work",
			args: args{
				"zh-Hant-TW",
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Var(tt.args.name, LocaleNameValidatorTag)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
