/*
Copyright © 2024 the emfield authors.
This file is part of emfield.

emfield is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

emfield is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with emfield.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package emfield estimates electromagnetic field strength over a
// bounded geographic region at a single above-mean-sea-level altitude,
// contributed by a set of radiating sources binned into named
// frequency bands.
//
// Compute is a pure compute engine: it takes a Request, checks it
// with Request.Validate (policy locks, region shape and size, bands,
// source count and enumerated options), and returns a Result. It does
// no I/O and holds no state between calls. File input and output live
// in separate helpers: LoadRegionGeoJSON/LoadRegionShapefile read a
// region, and WriteTo writes serialized results to a directory or
// bucket.
package emfield
