// Package tests contains test utilities and mock generation directives.
//
// For testing, the project uses:
// - gomock mocks of internal/interfaces in tests/mocks (regenerate with: go generate ./internal/interfaces/...)
// - sqlmock for database mocking in unit tests (tests/helpers/test_db.go)
// - testcontainers for integration tests with a real PostgreSQL (build tag "integration")
// - Custom bot mocks in tests/helpers/bot_mock.go
package tests
