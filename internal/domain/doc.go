// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/message). This root
// package holds sentinel errors, validation types, and the lifecycle
// vocabulary (Dependency, Decision, Phase) shared by the readiness model,
// the request gate, and the shutdown coordinator.
package domain
