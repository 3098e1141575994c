/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package item

// median3 returns the median of three values, used to predict an x or y
// coordinate from the last three observed differences in the same scan
// direction. Grounded on
// LASwriteItemCompressed_POINT10_v1::write's median_x/median_y
// computation in original_source/src/laswriteitemcompressed_v1.cpp.
func median3(a, b, c int32) int32 {
	if a < b {
		if b < c {
			return b
		} else if a < c {
			return c
		}
		return a
	}

	if a < c {
		return a
	} else if b < c {
		return c
	}

	return b
}
