/*
Copyright © 2019 the Icecore authors.
This file is part of Icecore.

Icecore is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Icecore is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Icecore.  If not, see <http://www.gnu.org/licenses/>.
*/

package icecore

import (
	"net"
	"net/url"
	"os"
	"path"
	"time"
)

// probeTimeout limits how long a connectivity probe will wait for a
// connection before declaring the endpoint unreachable.
const probeTimeout = 10 * time.Second

// Reachable reports whether the resource at rawurl can be reached. For
// http and https URLs it opens a TCP connection to the host and
// immediately closes it; for file URLs it checks that the path exists.
// Blob-storage URLs (gs, s3) authenticate at download time, so they
// are reported reachable here. "Unreachable" is an ordinary value at
// this layer: every failure mode collapses to false, and Reachable
// never returns an error or panics.
func Reachable(rawurl string) bool {
	u, err := url.Parse(rawurl)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https":
	case "file":
		// The host is the bucket directory and the path is the key,
		// matching how the downloader opens file buckets.
		_, err := os.Stat(path.Join(u.Host, u.Path))
		return err == nil
	case "gs", "s3":
		return true
	default:
		return false
	}
	host := u.Host
	if u.Port() == "" {
		if u.Scheme == "https" {
			host = net.JoinHostPort(u.Hostname(), "443")
		} else {
			host = net.JoinHostPort(u.Hostname(), "80")
		}
	}
	conn, err := net.DialTimeout("tcp", host, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
