package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "product not found",
			err:  ErrProductNotFound,
			want: true,
		},
		{
			name: "wrapped order not found",
			err:  fmt.Errorf("process return: %w", ErrOrderNotFound),
			want: true,
		},
		{
			name: "validation error",
			err:  ErrQuantityInvalid,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsNotFound(tt.err)
			if got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "quantity invalid",
			err:  ErrQuantityInvalid,
			want: true,
		},
		{
			name: "unknown product is a validation failure",
			err:  errors.Join(ErrProductNotFound, errors.New("product 7")),
			want: true,
		},
		{
			name: "name too long",
			err:  ErrCustomerNameTooLong,
			want: true,
		},
		{
			name: "name with reserved separator",
			err:  fmt.Errorf("%w: customer name %q", ErrCustomerNameInvalid, "Bob order no. 7"),
			want: true,
		},
		{
			name: "io error",
			err:  ErrSourceUnavailable,
			want: false,
		},
		{
			name: "order not found",
			err:  ErrOrderNotFound,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidation(tt.err)
			if got != tt.want {
				t.Errorf("IsValidation() = %v, want %v", got, tt.want)
			}
		})
	}
}
