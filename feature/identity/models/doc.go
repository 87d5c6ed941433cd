// Package models defines the data types of the identity feature: manifest and
// source entries read from spreadsheets, and the merged Player record served to
// callers.
package models
