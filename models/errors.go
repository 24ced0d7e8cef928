// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// SyncErrorCode is a stable integer identifying one kind in the SyncError
// taxonomy (spec.md §7). These values feed host telemetry and must never be
// renumbered; new kinds get new, unused codes.
type SyncErrorCode int

// Account/Setup kinds.
const (
	CodeNoToken SyncErrorCode = 1000 + iota
	CodeFailedToMigrate
	CodeFailedToLoadAccount
	CodeFailedToSetupEngine
	CodeFailedToRemoveAccount
	CodeFailedToCreateAccountKeys
	CodeAccountNotFound
	CodeAccountAlreadyExists
	CodeInvalidRecoveryKey
	CodeAccountRemoved
)

// Protocol kinds.
const (
	CodeNoFeaturesSpecified SyncErrorCode = 2000 + iota
	CodeNoResponseBody
	CodeUnexpectedStatusCode
	CodeUnexpectedResponseBody
	CodeUnableToEncodeRequestBody
	CodeUnableToDecodeResponse
	CodeInvalidDataInResponse
)

// Crypto kinds.
const (
	CodeFailedToEncryptValue SyncErrorCode = 3000 + iota
	CodeFailedToDecryptValue
	CodeFailedToPrepareForConnect
	CodeFailedToOpenSealedBox
	CodeFailedToSealData
)

// Secure store kinds.
const (
	CodeFailedToWrite SyncErrorCode = 4000 + iota
	CodeFailedToRead
	CodeFailedToRemove
	CodeFailedToDecodeSecureStoreData
)

// Feature-specific kinds.
const (
	CodeCredentialsMetadataMissingBeforeFirstSync SyncErrorCode = 5000 + iota
	CodeReceivedCredentialsWithoutUUID
	CodeEmailProtectionUsernamePresentButTokenMissing
	CodeSettingsMetadataNotPresent
)

// Runtime kinds.
const (
	CodeUnauthenticatedWhileLoggedIn SyncErrorCode = 6000 + iota
	CodePatchPayloadCompressionFailed
	CodeFailedToReadUserDefaults
)

var codeKinds = map[SyncErrorCode]string{
	CodeNoToken:                   "no_token",
	CodeFailedToMigrate:           "failed_to_migrate",
	CodeFailedToLoadAccount:       "failed_to_load_account",
	CodeFailedToSetupEngine:       "failed_to_setup_engine",
	CodeFailedToRemoveAccount:     "failed_to_remove_account",
	CodeFailedToCreateAccountKeys: "failed_to_create_account_keys",
	CodeAccountNotFound:           "account_not_found",
	CodeAccountAlreadyExists:      "account_already_exists",
	CodeInvalidRecoveryKey:        "invalid_recovery_key",
	CodeAccountRemoved:            "account_removed",

	CodeNoFeaturesSpecified:      "no_features_specified",
	CodeNoResponseBody:           "no_response_body",
	CodeUnexpectedStatusCode:     "unexpected_status_code",
	CodeUnexpectedResponseBody:   "unexpected_response_body",
	CodeUnableToEncodeRequestBody: "unable_to_encode_request_body",
	CodeUnableToDecodeResponse:   "unable_to_decode_response",
	CodeInvalidDataInResponse:    "invalid_data_in_response",

	CodeFailedToEncryptValue:      "failed_to_encrypt_value",
	CodeFailedToDecryptValue:      "failed_to_decrypt_value",
	CodeFailedToPrepareForConnect: "failed_to_prepare_for_connect",
	CodeFailedToOpenSealedBox:     "failed_to_open_sealed_box",
	CodeFailedToSealData:          "failed_to_seal_data",

	CodeFailedToWrite:                "failed_to_write",
	CodeFailedToRead:                 "failed_to_read",
	CodeFailedToRemove:               "failed_to_remove",
	CodeFailedToDecodeSecureStoreData: "failed_to_decode_secure_store_data",

	CodeCredentialsMetadataMissingBeforeFirstSync:     "credentials_metadata_missing_before_first_sync",
	CodeReceivedCredentialsWithoutUUID:                "received_credentials_without_uuid",
	CodeEmailProtectionUsernamePresentButTokenMissing: "email_protection_username_present_but_token_missing",
	CodeSettingsMetadataNotPresent:                    "settings_metadata_not_present",

	CodeUnauthenticatedWhileLoggedIn:  "unauthenticated_while_logged_in",
	CodePatchPayloadCompressionFailed: "patch_payload_compression_failed",
	CodeFailedToReadUserDefaults:      "failed_to_read_user_defaults",
}

// SyncError is the concrete carrier of the kinds described in spec.md §7.
// Host code should compare Code (not string matching) when branching on
// kind, and may use [errors.As] to recover a *SyncError from a wrapped chain.
type SyncError struct {
	Code       SyncErrorCode
	Message    string
	StatusCode int   // populated for CodeUnexpectedStatusCode / store errors carrying a platform code
	Reason     string // populated for CodeAccountRemoved
	Wrapped    error
}

// Kind returns the stable string identifier for Code, used in metrics.
func (e *SyncError) Kind() string {
	if k, ok := codeKinds[e.Code]; ok {
		return k
	}
	return fmt.Sprintf("unknown_%d", int(e.Code))
}

func (e *SyncError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind(), e.Message)
	}
	return e.Kind()
}

func (e *SyncError) Unwrap() error {
	return e.Wrapped
}

// NewSyncError constructs a SyncError of the given code, optionally wrapping
// a lower-level cause.
func NewSyncError(code SyncErrorCode, message string, wrapped error) *SyncError {
	return &SyncError{Code: code, Message: message, Wrapped: wrapped}
}

// NewUnexpectedStatusCode builds the protocol-kind error for a non-2xx HTTP
// response, carrying the numeric status for both retry policy and stats.
func NewUnexpectedStatusCode(status int) *SyncError {
	return &SyncError{
		Code:       CodeUnexpectedStatusCode,
		Message:    fmt.Sprintf("unexpected status code %d", status),
		StatusCode: status,
	}
}

// NewAccountRemoved builds the account-removed error, recording why the
// local account was torn down (e.g. "unauthenticated", "user_requested",
// "environment_changed").
func NewAccountRemoved(reason string) *SyncError {
	return &SyncError{Code: CodeAccountRemoved, Reason: reason, Message: reason}
}
