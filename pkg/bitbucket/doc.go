// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package bitbucket implements provider.Provider for Bitbucket Cloud using
// app-password authentication (username + app password, carried in
// Credential as Username/Token).
package bitbucket
