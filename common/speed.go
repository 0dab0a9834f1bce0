package common

// Speeds here are in km/h, the unit tracks are reported in.

// SpeedOfStationaryKmh is the speed below which a track point
// is considered stationary (waiting at a crossing, pausing for a photo).
const SpeedOfStationaryKmh = 2.0

const SpeedOfWalkingMeanKmh = 4.3
const SpeedOfRunningMeanKmh = 12.0
const SpeedOfCyclingMeanKmh = 19.3
const SpeedOfCyclingMaxKmh = 42.0

// SpeedOfTrainMaxKmh bounds the speed implied by two consecutive fixes;
// anything faster is a GPS jump, not travel.
const SpeedOfTrainMaxKmh = 320.0
