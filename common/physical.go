package common

// All elevations are in meters above sea level.

const ElevationOfEverest = 8848.0
const ElevationOfDeadSea = -430.0

// EarthRadiusKm is the mean earth radius used for haversine distances.
const EarthRadiusKm = 6371.0
