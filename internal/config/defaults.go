package config

const DefaultLogLevel = "info"
