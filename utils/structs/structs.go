// Package structs implements generic containers used to hold key material.
package structs
