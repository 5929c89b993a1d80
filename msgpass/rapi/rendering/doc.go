// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package rendering renders API responses.

Errors returned by the thread registry are mapped onto HTTP status codes:

	core.ErrUnknownThreadID  -> 404 Thread.UnknownThreadID
	core.ErrNotAllowed       -> 409 Thread.InvalidStateTransition
	anything else            -> 500 InternalServerError
*/
package rendering
