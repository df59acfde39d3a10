// Copyright (c) 2026 ComicHub. All rights reserved.

// Package schema centralizes table and column identifiers for every relation
// in the comics schema. Store implementations interpolate these constants into
// their SQL instead of scattering raw strings, so a column rename is a
// one-file change.
package schema

// ComicsAccountTable represents the 'comics.account' table
type ComicsAccountTable struct {
	Table         string
	ID            string
	Username      string
	Email         string
	Password      string
	Role          string
	Biography     string
	ProfileURL    string
	EmailVerified string
	Banned        string
	Joined        string
}

// ComicsAccount is the schema definition for comics.account
var ComicsAccount = ComicsAccountTable{
	Table:         "comics.account",
	ID:            "accountid",
	Username:      "username",
	Email:         "email",
	Password:      "passwordhash",
	Role:          "role",
	Biography:     "biography",
	ProfileURL:    "profileurl",
	EmailVerified: "emailverified",
	Banned:        "banned",
	Joined:        "joined",
}
