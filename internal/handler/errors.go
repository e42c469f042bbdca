// SPDX-License-Identifier: Apache-2.0

package handler

import "errors"

var (
	errNoServicesProvided = errors.New("no services are provided")
)
