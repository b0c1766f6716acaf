// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs provides small durable key/value storage for user
// preferences.
//
// Two backends exist: a JSON file written atomically (the default) and a
// SQLite database. Both store raw JSON values so that callers decide the
// encoding of each key.
//
// # Usage
//
//	store, err := prefs.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	raw, ok, err := store.Get("isDarkMode")
//
// Watch reports writes made by other processes to the same backing file.
package prefs
