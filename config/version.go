// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"strconv"
)

// VersionMajor is the Major semantic version number (#.y.z) - changed when first public release (0.y.z -> 1.y.z)
// and when backwards compatibility is broken.
const VersionMajor = 0

// VersionMinor is the Minor semantic version number (x.#.z) - changed when backwards-compatible features are introduced.
const VersionMinor = 3

// Version is the type holding our full version information.
type Version struct {
	Major       int    `json:"major"`
	Minor       int    `json:"minor"`
	BuildNumber int    `json:"build_number"`
	CommitHash  string `json:"commit_hash"`
	Branch      string `json:"branch"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.BuildNumber)
}

func convertToInt(val string) int {
	if val == "" {
		return 0
	}
	value, _ := strconv.ParseInt(val, 10, 0)
	return int(value)
}

// GetCurrentVersion retrieves a copy of the current global Version structure (for the application)
func GetCurrentVersion() Version {
	return Version{
		Major:       VersionMajor,
		Minor:       VersionMinor,
		BuildNumber: convertToInt(BuildNumber), // set using -ldflags
		CommitHash:  CommitHash,
		Branch:      Branch,
	}
}

// FormatVersionAndLicense prints current version and license information
func FormatVersionAndLicense() string {
	version := GetCurrentVersion()
	return fmt.Sprintf("%s [%s] (commit #%s)\n%s", version.String(), version.Branch, version.CommitHash, GetLicenseInfo())
}

// GetLicenseInfo retrieves the current license information
func GetLicenseInfo() string {
	return "go-streampay is licensed with AGPLv3.0"
}
