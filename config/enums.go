package config

//go:generate go tool go-enum --marshal --names

// Which submaps of the registry tweakpoints are merged into.
// ENUM(all, lengths, features)
type TweakScope int
