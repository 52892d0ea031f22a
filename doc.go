/*
 * doc.go, part of gocg.
 *
 * Copyright 2024 The gocg developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package gocg provides the data model for coarse-grained molecular systems:
beads, topologies with named bonded-interaction groups, per-frame positions
and forces, and neighbor-pair enumeration within a cutoff. The subpackages
build on it: spline implements the cubic-spline basis used for tabulated
interactions, fmatch the force-matching engine that fits those splines to
reference forces, traj/ftf a compressed binary trajectory format carrying
forces, update the tabulated-potential refinement helpers, and cgplot the
plotting of the fitted curves.
*/
package gocg
