// Package domain contains the credit card entity, its validation rules,
// and the snapshot comparison used by the optimistic update path.
package domain
