// Package enrollment runs the lifecycle of binding an authenticator app to
// an account.
//
// A session moves through four states:
//
//	unenrolled --issue--> secret_issued --confirm--> verified
//	                            |
//	                            +--abandon/expire--> abandoned --issue--> secret_issued
//
// Transition is a pure function over (State, Event); Service applies it to
// an Enrollment value owned by the caller.
//
// Service.Begin generates the secret exactly once and builds the
// provisioning URI. The caller persists the result of Service.Seal, shows
// Enrollment.QRCodeDataURI and Enrollment.ManualEntryKey, then calls
// Service.Confirm with the first code typed by the user. Later logins use
// Service.Restore to get verification params back from storage.
//
//	e, err := svc.Begin(ctx, user.ID, user.Email)
//	sealed, err := svc.Seal(e)
//	img, err := e.QRCodeDataURI(0)
//	ok, err := svc.Confirm(ctx, e, submitted)
package enrollment
