// Package problems encodes the two worked applications served by numlab as
// linear systems and hands them to the solver packages.
//
//	• Blend   — three sources, each with a percentage composition of three
//	            materials; find how much to draw from each source to meet the
//	            material demands exactly (direct methods).
//	• Bridge  — Wheatstone bridge mesh currents from Kirchhoff's laws, with
//	            the equations ordered for diagonal dominance (iterative methods).
package problems
